package assert

import (
	"fmt"

	"github.com/bloeys/learngl/logging"
)

// T panics with the formatted message if check is false
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	errMsg := "Assert failed: " + fmt.Sprintf(msg, args...)
	logging.ErrLog.Output(2, errMsg)
	panic(errMsg)
}
