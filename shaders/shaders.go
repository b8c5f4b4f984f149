package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/logging"
)

type Shader struct {
	Id   uint32
	Type ShaderType
}

func (s *Shader) Delete(dev gpu.Device) {

	if s.Id == 0 {
		return
	}

	dev.DeleteShader(s.Id)
	s.Id = 0
}

// NewShaderProgramFromFiles reads, compiles and links a vertex+fragment program.
//
// A read failure returns before anything is created on the GPU. If any stage fails to compile
// the returned error is a *CompileError holding the logs of all failed stages, and if linking
// fails it's a *LinkError. On any failure no GPU objects are left alive.
func NewShaderProgramFromFiles(dev gpu.Device, vertPath, fragPath string) (ShaderProgram, error) {

	vertSrc, err := os.ReadFile(vertPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read vertex shader '%s'. Err: %w", vertPath, err)
	}

	fragSrc, err := os.ReadFile(fragPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read fragment shader '%s'. Err: %w", fragPath, err)
	}

	return NewShaderProgramFromSource(dev, vertSrc, fragSrc)
}

func NewShaderProgramFromSource(dev gpu.Device, vertSrc, fragSrc []byte) (ShaderProgram, error) {

	// Both stages are always compiled so that a broken program reports every broken stage at once
	vert, vertErr := CompileShaderOfType(dev, vertSrc, ShaderType_Vertex)
	frag, fragErr := CompileShaderOfType(dev, fragSrc, ShaderType_Fragment)

	if vertErr != nil || fragErr != nil {

		vert.Delete(dev)
		frag.Delete(dev)

		compErr := &CompileError{}
		if vertErr != nil {
			compErr.VertexLog = vertErr.Error()
		}

		if fragErr != nil {
			compErr.FragmentLog = fragErr.Error()
		}

		logging.ErrLog.Println("Shader compilation failed. Err: ", compErr)
		return ShaderProgram{}, compErr
	}

	progId := dev.CreateProgram()
	if progId == 0 {
		vert.Delete(dev)
		frag.Delete(dev)
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	dev.AttachShader(progId, vert.Id)
	dev.AttachShader(progId, frag.Id)
	dev.LinkProgram(progId)

	// Linked programs keep working after their shaders are gone
	vert.Delete(dev)
	frag.Delete(dev)

	if !dev.ProgramLinked(progId) {

		linkErr := &LinkError{Log: dev.ProgramInfoLog(progId)}
		if linkErr.Log == "" {
			linkErr.Log = fmt.Sprintf("linking shader program with id %d failed without an info log", progId)
		}

		dev.DeleteProgram(progId)
		logging.ErrLog.Println("Shader program linking failed. Err: ", linkErr)
		return ShaderProgram{}, linkErr
	}

	return ShaderProgram{Id: progId, dev: dev}, nil
}

// LoadAndCompileCombinedShader loads a single file holding both stages, where each stage
// starts with a '//shader:vertex' or '//shader:fragment' line
func LoadAndCompileCombinedShader(dev gpu.Device, shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		return ShaderProgram{}, fmt.Errorf("failed to read combined shader '%s'. Err: %w", shaderPath, err)
	}

	return LoadAndCompileCombinedShaderSrc(dev, combinedSource)
}

func LoadAndCompileCombinedShaderSrc(dev gpu.Device, shaderSrc []byte) (ShaderProgram, error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return ShaderProgram{}, errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	var vertSrc, fragSrc []byte
	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		if bytes.HasPrefix(src, []byte("vertex")) {
			vertSrc = src[6:]
		} else if bytes.HasPrefix(src, []byte("fragment")) {
			fragSrc = src[8:]
		} else {
			return ShaderProgram{}, errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment'")
		}
	}

	if vertSrc == nil {
		return ShaderProgram{}, errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	}

	if fragSrc == nil {
		return ShaderProgram{}, errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
	}

	return NewShaderProgramFromSource(dev, vertSrc, fragSrc)
}

// CompileShaderOfType compiles a single stage. On failure the shader object is deleted and the
// error text is the driver's info log for that stage
func CompileShaderOfType(dev gpu.Device, shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := dev.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create OpenGL %s shader", shaderType)
	}

	dev.ShaderSource(shaderId, string(shaderSource))
	dev.CompileShader(shaderId)

	if dev.ShaderCompiled(shaderId) {
		return Shader{Id: shaderId, Type: shaderType}, nil
	}

	errMsg := dev.ShaderInfoLog(shaderId)
	if errMsg == "" {
		errMsg = fmt.Sprintf("compilation of %s shader with id %d failed without an info log", shaderType, shaderId)
	}

	dev.DeleteShader(shaderId)
	return Shader{}, errors.New(errMsg)
}
