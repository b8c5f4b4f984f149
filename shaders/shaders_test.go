package shaders_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/gpu/gputest"
	"github.com/bloeys/learngl/shaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validVertSrc = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

void main()
{
	gl_Position = projection * view * model * vec4(aPos, 1.0);
}
`

	validFragSrc = `#version 410 core
out vec4 FragColor;

uniform vec3 objectColor;
uniform float ambientStrength;

void main()
{
	FragColor = vec4(objectColor * ambientStrength, 1.0);
}
`

	brokenVertSrc = `#version 410 core
#error missing vertex position input
void main() {}
`

	brokenFragSrc = `#version 410 core
out vec4 FragColor;
#error undeclared identifier 'lightColor'
void main() {}
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestNewShaderProgramFromFiles(t *testing.T) {

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "cube.vert", validVertSrc)
	fragPath := writeFile(t, dir, "cube.frag", validFragSrc)

	dev := gputest.NewDevice()
	prog, err := shaders.NewShaderProgramFromFiles(dev, vertPath, fragPath)
	require.NoError(t, err)

	assert.NotZero(t, prog.Id)
	assert.True(t, dev.Programs[prog.Id].Linked)

	// Stage objects are released once linked
	assert.Equal(t, 0, dev.LiveShaders())
	assert.Equal(t, 1, dev.LivePrograms())

	for _, name := range []string{"model", "view", "projection", "objectColor", "ambientStrength"} {
		assert.GreaterOrEqual(t, prog.GetUniformLocation(name), int32(0), "uniform %q", name)
	}

	assert.Equal(t, shaders.InvalidUniformLocation, prog.GetUniformLocation("notAUniform"))
}

func TestCompileStageOrderAndTypes(t *testing.T) {

	dev := gputest.NewDevice()
	_, err := shaders.NewShaderProgramFromSource(dev, []byte(validVertSrc), []byte(validFragSrc))
	require.NoError(t, err)

	creates := dev.CallsNamed("CreateShader")
	require.Len(t, creates, 2)
	assert.Equal(t, shaders.ShaderType_Vertex.ToGl(), creates[0].Args[0])
	assert.Equal(t, shaders.ShaderType_Fragment.ToGl(), creates[1].Args[0])
	assert.Equal(t, 2, dev.CountCalls("AttachShader"))
	assert.Equal(t, 1, dev.CountCalls("LinkProgram"))
}

func TestReadFailureCreatesNothing(t *testing.T) {

	dir := t.TempDir()
	vertPath := writeFile(t, dir, "ok.vert", validVertSrc)
	fragPath := writeFile(t, dir, "ok.frag", validFragSrc)
	missing := filepath.Join(dir, "missing.glsl")

	tests := []struct {
		name     string
		vertPath string
		fragPath string
	}{
		{name: "missing vertex", vertPath: missing, fragPath: fragPath},
		{name: "missing fragment", vertPath: vertPath, fragPath: missing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			dev := gputest.NewDevice()
			_, err := shaders.NewShaderProgramFromFiles(dev, tt.vertPath, tt.fragPath)
			require.Error(t, err)

			assert.True(t, errors.Is(err, fs.ErrNotExist))
			assert.Contains(t, err.Error(), missing)
			assert.Empty(t, dev.Calls)
		})
	}
}

func TestCompileErrorAggregation(t *testing.T) {

	tests := []struct {
		name        string
		vertSrc     string
		fragSrc     string
		wantVertLog bool
		wantFragLog bool
	}{
		{name: "vertex fails", vertSrc: brokenVertSrc, fragSrc: validFragSrc, wantVertLog: true},
		{name: "fragment fails", vertSrc: validVertSrc, fragSrc: brokenFragSrc, wantFragLog: true},
		{name: "both fail", vertSrc: brokenVertSrc, fragSrc: brokenFragSrc, wantVertLog: true, wantFragLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			dev := gputest.NewDevice()
			_, err := shaders.NewShaderProgramFromSource(dev, []byte(tt.vertSrc), []byte(tt.fragSrc))
			require.Error(t, err)

			var compErr *shaders.CompileError
			require.True(t, errors.As(err, &compErr))

			// No link is attempted and every stage object is released
			assert.Equal(t, 0, dev.CountCalls("CreateProgram"))
			assert.Equal(t, 0, dev.CountCalls("LinkProgram"))
			assert.Equal(t, 0, dev.LiveShaders())

			msg := err.Error()
			assert.NotEmpty(t, msg)

			if tt.wantVertLog {
				assert.Contains(t, compErr.VertexLog, "missing vertex position input")
				assert.Contains(t, msg, compErr.VertexLog)
			} else {
				assert.Empty(t, compErr.VertexLog)
			}

			if tt.wantFragLog {
				assert.Contains(t, compErr.FragmentLog, "undeclared identifier")
				assert.Contains(t, msg, compErr.FragmentLog)
			} else {
				assert.Empty(t, compErr.FragmentLog)
			}

			// A single failure is reported as exactly that stage's log, nothing else
			if tt.wantVertLog != tt.wantFragLog {
				assert.Equal(t, compErr.VertexLog+compErr.FragmentLog, msg)
			}

			if tt.wantVertLog && tt.wantFragLog {
				assert.Less(t, strings.Index(msg, compErr.VertexLog), strings.Index(msg, compErr.FragmentLog))
			}
		})
	}
}

func TestLinkFailureDeletesProgram(t *testing.T) {

	dev := gputest.NewDevice()
	dev.LinkFailLog = "ERROR: Varying 'normal' is read by the fragment shader but not written by the vertex shader\n"

	_, err := shaders.NewShaderProgramFromSource(dev, []byte(validVertSrc), []byte(validFragSrc))
	require.Error(t, err)

	var linkErr *shaders.LinkError
	require.True(t, errors.As(err, &linkErr))
	assert.Equal(t, dev.LinkFailLog, linkErr.Error())

	assert.Equal(t, 1, dev.CountCalls("DeleteProgram"))
	assert.Equal(t, 0, dev.LivePrograms())
	assert.Equal(t, 0, dev.LiveShaders())
}

func TestCombinedShader(t *testing.T) {

	combined := "//shader:vertex\n" + validVertSrc + "\n//shader:fragment\n" + validFragSrc

	dev := gputest.NewDevice()
	prog, err := shaders.LoadAndCompileCombinedShaderSrc(dev, []byte(combined))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, prog.GetUniformLocation("objectColor"), int32(0))

	_, err = shaders.LoadAndCompileCombinedShaderSrc(dev, []byte("//shader:vertex\n"+validVertSrc))
	assert.ErrorContains(t, err, "no valid fragment shader")

	_, err = shaders.LoadAndCompileCombinedShaderSrc(dev, []byte("//shader:geometry\nvoid main() {}\n//shader:vertex\n"+validVertSrc))
	assert.ErrorContains(t, err, "unknown shader type")

	_, err = shaders.LoadAndCompileCombinedShaderSrc(dev, []byte(validVertSrc))
	assert.Error(t, err)

	// Files go through the same path
	p := writeFile(t, t.TempDir(), "combined.glsl", combined)
	_, err = shaders.LoadAndCompileCombinedShader(dev, p)
	assert.NoError(t, err)
}

func TestUseAndUniforms(t *testing.T) {

	dev := gputest.NewDevice()
	prog, err := shaders.NewShaderProgramFromSource(dev, []byte(validVertSrc), []byte(validFragSrc))
	require.NoError(t, err)

	prog.Use()
	assert.Equal(t, prog.Id, dev.CurrentProgram)

	color := gglm.NewVec3(1, 0.5, 0.25)
	prog.SetUnifVec3("objectColor", &color)
	prog.SetUnifFloat32("ambientStrength", 0.1)

	view := gglm.NewTrMatId()
	prog.SetUnifMat4("view", &view.Mat4)

	p := dev.Programs[prog.Id]
	assert.Equal(t, color.Data, p.Values[prog.GetUniformLocation("objectColor")])
	assert.Equal(t, float32(0.1), p.Values[prog.GetUniformLocation("ambientStrength")])
	assert.Equal(t, view.Data, p.Values[prog.GetUniformLocation("view")])

	// Unknown names are silently skipped
	dev.ResetCalls()
	prog.SetUnifInt32("notAUniform", 3)
	assert.Equal(t, 0, dev.CountCalls("ProgramUniform1i"))

	prog.UnBind()
	assert.Zero(t, dev.CurrentProgram)
}

func TestDeleteIsIdempotent(t *testing.T) {

	dev := gputest.NewDevice()
	prog, err := shaders.NewShaderProgramFromSource(dev, []byte(validVertSrc), []byte(validFragSrc))
	require.NoError(t, err)

	prog.Delete()
	prog.Delete()

	assert.Equal(t, 1, dev.CountCalls("DeleteProgram"))
	assert.Zero(t, prog.Id)
	assert.Equal(t, 0, dev.LivePrograms())
}
