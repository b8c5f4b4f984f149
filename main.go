package main

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/learngl/assets"
	"github.com/bloeys/learngl/camera"
	"github.com/bloeys/learngl/config"
	"github.com/bloeys/learngl/engine"
	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/input"
	"github.com/bloeys/learngl/logging"
	"github.com/bloeys/learngl/materials"
	"github.com/bloeys/learngl/meshes"
	"github.com/bloeys/learngl/renderer/rend3dgl"
	"github.com/bloeys/learngl/shaders"
	"github.com/bloeys/learngl/timing"
	"github.com/veandco/go-sdl2/sdl"
)

// Light casters demo: textured cubes lit by a directional, a point and a spot light (the flashlight)

var (
	// Interleaved pos.xyz, normal.xyz, uv.xy
	cubeVertices = []float32{
		-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,
		0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 0.0,
		0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
		0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
		-0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,

		-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,
		0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 0.0,
		0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
		0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
		-0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,

		-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,
		-0.5, 0.5, -0.5, -1.0, 0.0, 0.0, 1.0, 1.0,
		-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
		-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
		-0.5, -0.5, 0.5, -1.0, 0.0, 0.0, 0.0, 0.0,
		-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,

		0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 0.0, 0.0, 1.0, 1.0,
		0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
		0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
		0.5, -0.5, 0.5, 1.0, 0.0, 0.0, 0.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,

		-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,
		0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 1.0, 1.0,
		0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
		0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
		-0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 0.0, 0.0,
		-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,

		-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
		0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 1.0, 1.0,
		0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
		0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
		-0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 0.0,
		-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
	}

	cubePositions = []gglm.Vec3{
		gglm.NewVec3(0.0, 0.0, 0.0),
		gglm.NewVec3(2.0, 5.0, -15.0),
		gglm.NewVec3(-1.5, -2.2, -2.5),
		gglm.NewVec3(-3.8, -2.0, -12.3),
		gglm.NewVec3(2.4, -0.4, -3.5),
		gglm.NewVec3(-1.7, 3.0, -7.5),
		gglm.NewVec3(1.3, -2.0, -2.5),
		gglm.NewVec3(1.5, 2.0, -2.5),
		gglm.NewVec3(1.5, 0.2, -1.5),
		gglm.NewVec3(-1.3, 1.0, -1.5),
	}

	dirLight = materials.DirLight{
		Dir: gglm.NewVec3(-0.2, -1.0, -0.3),
		LightColors: materials.LightColors{
			Ambient:  gglm.NewVec3(0.05, 0.05, 0.05),
			Diffuse:  gglm.NewVec3(0.4, 0.4, 0.4),
			Specular: gglm.NewVec3(0.5, 0.5, 0.5),
		},
	}

	pointLight = materials.PointLight{
		Pos: gglm.NewVec3(0.0, 0.0, -6.0),
		LightColors: materials.LightColors{
			Ambient:  gglm.NewVec3(0.3, 0.3, 0.3),
			Diffuse:  gglm.NewVec3(0.8, 0.8, 0.8),
			Specular: gglm.NewVec3(1.0, 1.0, 1.0),
		},
		Attenuation: materials.Attenuation50,
	}

	flashLight = materials.SpotLight{
		LightColors: materials.LightColors{
			Diffuse:  gglm.NewVec3(1.0, 1.0, 1.0),
			Specular: gglm.NewVec3(1.0, 1.0, 1.0),
		},
		Attenuation: materials.Attenuation50,
		InnerCutoff: 12.5,
		OuterCutoff: 17.5,
	}
)

type Game struct {
	Win  *engine.Window
	Rend *rend3dgl.Rend3DGL

	dev gpu.Device
	cfg config.Config
	cam camera.Camera

	cubeMat  materials.Material
	lightMat materials.Material

	cubeMesh  meshes.Mesh
	lightMesh meshes.Mesh

	diffuseTex  assets.Texture
	specularTex assets.Texture

	// Cubes spin around this axis
	cubeRotAxis gglm.Vec3

	flashLightOn    bool
	useManualLookAt bool

	fpsLogInterval timing.Interval
}

func main() {

	cfg, err := config.Load(config.DefaultConfigFilename)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}
	defer engine.DeInit()

	//Create window
	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}

	engine.SetMSAA(true)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetClearColor(0.1, 0.1, 0.1)

	game := &Game{
		Win:          window,
		Rend:         rend3dgl.NewRend3DGL(),
		dev:          gpu.NewGL(),
		cfg:          cfg,
		flashLightOn: true,

		fpsLogInterval: timing.Interval{Seconds: 5},
	}

	engine.Run(game, window, game.Rend)
}

func (g *Game) Init() {

	camCfg := &g.cfg.Camera
	g.cam = camera.New(gglm.NewVec3(camCfg.Pos[0], camCfg.Pos[1], camCfg.Pos[2]), camCfg.Fov, camCfg.Yaw, camCfg.Pitch)
	g.Win.SetRelativeMouseMode(true)

	g.cubeRotAxis = gglm.NewVec3(0.2, 0.7, 0.5)
	g.cubeRotAxis.Normalize()

	//Shaders
	shaderDir := g.cfg.Paths.ShaderDir
	cubeProg, err := shaders.NewShaderProgramFromFiles(g.dev, filepath.Join(shaderDir, "cube_vert.glsl"), filepath.Join(shaderDir, "cube_frag.glsl"))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create cube shader. Err: ", err)
	}
	g.cubeMat = materials.NewMaterial("cube", cubeProg)

	lightProg, err := shaders.LoadAndCompileCombinedShader(g.dev, filepath.Join(shaderDir, "light.glsl"))
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create light shader. Err: ", err)
	}
	g.lightMat = materials.NewMaterial("light", lightProg)

	//Textures
	g.diffuseTex = g.loadTextureOrFallback(g.cfg.Paths.DiffuseTexture, color.NRGBA{R: 200, G: 140, B: 80, A: 255})
	g.specularTex = g.loadTextureOrFallback(g.cfg.Paths.SpecularTexture, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	// Texture i goes to unit i and 'material.<role><i>', see cube_frag.glsl
	cubeTextures := []meshes.Texture{
		{Id: g.diffuseTex.Id, Role: meshes.TextureRole_Diffuse},
		{Id: g.specularTex.Id, Role: meshes.TextureRole_Specular},
	}

	//Meshes
	cubeVerts, err := meshes.VerticesFromFloats(cubeVertices)
	if err != nil {
		logging.ErrLog.Fatalln("Invalid cube vertices. Err: ", err)
	}
	cubeIndices := meshes.SequentialIndices(len(cubeVerts))

	if g.cfg.Paths.Model != "" {
		g.cubeMesh, err = meshes.LoadMesh(g.dev, "model", g.cfg.Paths.Model, 0, cubeTextures)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load model. Err: ", err)
		}
	} else {
		g.cubeMesh = meshes.NewMesh(g.dev, cubeVerts, cubeIndices, cubeTextures)
	}

	g.lightMesh = meshes.NewMesh(g.dev, cubeVerts, cubeIndices, nil)
	g.lightMesh.Name = "light"
}

func (g *Game) loadTextureOrFallback(path string, fallbackColor color.NRGBA) assets.Texture {

	tex, err := assets.LoadTexture(g.dev, path, nil)
	if err == nil {
		return tex
	}

	logging.WarnLog.Printf("Failed to load texture, using a plain color instead. Err: %s\n", err)

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, fallbackColor)
	return assets.UploadImage(g.dev, img, &assets.TextureLoadOptions{NoMipmaps: true})
}

func (g *Game) Update() {

	if input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	if input.KeyClicked(sdl.K_f) {
		g.flashLightOn = !g.flashLightOn
	}

	if input.KeyClicked(sdl.K_m) {
		g.useManualLookAt = !g.useManualLookAt
		logging.InfoLog.Printf("Manual look at matrix: %v\n", g.useManualLookAt)
	}

	g.updateCamera()
}

func (g *Game) updateCamera() {

	camCfg := &g.cfg.Camera

	mouseX, mouseY := input.GetMouseMotion()
	if mouseX != 0 || mouseY != 0 {
		// Screen y grows downwards, pitch grows upwards
		g.cam.Look(float32(mouseX)*camCfg.MouseSensitivity, float32(-mouseY)*camCfg.MouseSensitivity)
	}

	if wheel := input.GetMouseWheelYNorm(); wheel != 0 {
		g.cam.Zoom(float32(-wheel) * camCfg.ZoomStep)
	}

	moveDist := camCfg.MoveSpeed * timing.DT()

	if input.KeyDown(sdl.K_w) {
		g.cam.MoveForward(moveDist)
	} else if input.KeyDown(sdl.K_s) {
		g.cam.MoveForward(-moveDist)
	}

	if input.KeyDown(sdl.K_d) {
		g.cam.MoveSideways(moveDist)
	} else if input.KeyDown(sdl.K_a) {
		g.cam.MoveSideways(-moveDist)
	}
}

func (g *Game) Render() {

	var viewMat gglm.Mat4
	if g.useManualLookAt {
		viewMat = g.cam.ViewMatrixManual()
	} else {
		viewMat = g.cam.ViewMatrix()
	}
	projMat := g.cam.ProjMatrix(g.Win.AspectRatio(), 0.1, 100)

	// Light cube
	g.lightMat.SetCamera(&viewMat, &projMat, &g.cam.Pos)

	lightModelMat := gglm.NewTrMatId()
	lightModelMat.TranslateVec(&pointLight.Pos).Scale(0.2, 0.2, 0.2)
	g.Rend.DrawMesh(&g.lightMesh, &lightModelMat, &g.lightMat)

	// Lit cubes
	g.cubeMat.SetCamera(&viewMat, &projMat, &g.cam.Pos)
	g.cubeMat.UploadShininess()

	dirLight.SetOnMaterial(&g.cubeMat, "dirLight")
	pointLight.SetOnMaterial(&g.cubeMat, "pointLight")

	flashLight.Pos = g.cam.Pos
	flashLight.Dir = g.cam.Front()
	if g.flashLightOn {
		flashLight.Diffuse = gglm.NewVec3(1, 1, 1)
		flashLight.Specular = gglm.NewVec3(1, 1, 1)
	} else {
		flashLight.Diffuse = gglm.Vec3{}
		flashLight.Specular = gglm.Vec3{}
	}
	flashLight.SetOnMaterial(&g.cubeMat, "spotLight")

	elapsed := timing.ElapsedTime()
	for i := 0; i < len(cubePositions); i++ {

		angleDeg := 20*float32(i) + elapsed*25

		cubeModelMat := gglm.NewTrMatId()
		cubeModelMat.TranslateVec(&cubePositions[i])
		cubeModelMat.Rotate(angleDeg*gglm.Deg2Rad, g.cubeRotAxis.X(), g.cubeRotAxis.Y(), g.cubeRotAxis.Z())

		g.Rend.DrawMesh(&g.cubeMesh, &cubeModelMat, &g.cubeMat)
	}
}

func (g *Game) FrameEnd() {

	if g.fpsLogInterval.Passed() {
		logging.InfoLog.Printf("FPS: %.1f (draw calls: %d)\n", timing.GetAvgFPS(), g.Rend.DrawCalls)
	}
}

func (g *Game) DeInit() {

	g.cubeMesh.Delete()
	g.lightMesh.Delete()

	g.diffuseTex.Delete(g.dev)
	g.specularTex.Delete(g.dev)

	g.cubeMat.Delete()
	g.lightMat.Delete()
}
