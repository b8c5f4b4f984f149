package shaders

import (
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/gpu"
)

// InvalidUniformLocation is what GetUniformLocation returns for names that aren't active
// uniforms of the program. Setting a uniform at this location does nothing.
const InvalidUniformLocation int32 = -1

type ShaderProgram struct {
	Id  uint32
	dev gpu.Device
}

// Use makes this the active program for following draw calls
func (sp *ShaderProgram) Use() {
	sp.dev.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	sp.dev.UseProgram(0)
}

func (sp *ShaderProgram) GetUniformLocation(name string) int32 {
	return sp.dev.GetUniformLocation(sp.Id, name)
}

// The SetUnif functions use direct state access (glProgramUniform*), so the program does
// not have to be bound first.

func (sp *ShaderProgram) SetUnifInt32(uniformName string, val int32) {
	sp.SetUnifInt32Loc(sp.GetUniformLocation(uniformName), val)
}

func (sp *ShaderProgram) SetUnifInt32Loc(loc int32, val int32) {

	if loc < 0 {
		return
	}

	sp.dev.ProgramUniform1i(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetUnifFloat32(uniformName string, val float32) {
	sp.SetUnifFloat32Loc(sp.GetUniformLocation(uniformName), val)
}

func (sp *ShaderProgram) SetUnifFloat32Loc(loc int32, val float32) {

	if loc < 0 {
		return
	}

	sp.dev.ProgramUniform1f(sp.Id, loc, val)
}

func (sp *ShaderProgram) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	sp.SetUnifVec3Loc(sp.GetUniformLocation(uniformName), vec3)
}

func (sp *ShaderProgram) SetUnifVec3Loc(loc int32, vec3 *gglm.Vec3) {

	if loc < 0 {
		return
	}

	sp.dev.ProgramUniform3fv(sp.Id, loc, &vec3.Data)
}

func (sp *ShaderProgram) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	sp.SetUnifMat4Loc(sp.GetUniformLocation(uniformName), mat4)
}

func (sp *ShaderProgram) SetUnifMat4Loc(loc int32, mat4 *gglm.Mat4) {

	if loc < 0 {
		return
	}

	sp.dev.ProgramUniformMatrix4fv(sp.Id, loc, &mat4.Data)
}

// Delete releases the program. Calling it more than once is fine
func (sp *ShaderProgram) Delete() {

	if sp.Id == 0 {
		return
	}

	sp.dev.DeleteProgram(sp.Id)
	sp.Id = 0
}
