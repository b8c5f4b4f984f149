package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"runtime"
	"unsafe"

	"github.com/bloeys/learngl/gpu"
	"github.com/bloeys/learngl/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/mandykoh/prism"
)

type Texture struct {
	// Path only exists for textures that were loaded from disk
	Path   string
	Id     uint32
	Width  int32
	Height int32
}

func (t *Texture) Delete(dev gpu.Device) {

	if t.Id == 0 {
		return
	}

	dev.DeleteTexture(t.Id)
	t.Id = 0
}

type TextureLoadOptions struct {
	// KeepOrientation disables the vertical flip done by default, which is needed
	// because image rows start at the top while OpenGL uv rows start at the bottom
	KeepOrientation bool
	NoMipmaps       bool
	// LinearMinFilter uses linear instead of nearest filtering when minifying
	LinearMinFilter bool
}

// LoadTexture decodes a png or jpeg file and uploads it as an RGBA 2D texture
// with repeat wrapping and (by default) mipmaps.
//
// Decoding happens before any gpu object is created, so a failure leaves nothing behind.
func LoadTexture(dev gpu.Device, file string, loadOptions *TextureLoadOptions) (Texture, error) {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	f, err := os.Open(file)
	if err != nil {
		return Texture{}, fmt.Errorf("failed to open texture '%s'. Err: %w", file, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Texture{}, fmt.Errorf("failed to decode texture '%s'. Err: %w", file, err)
	}

	tex := UploadImage(dev, img, loadOptions)
	tex.Path = file
	return tex, nil
}

// UploadImage uploads an already decoded image. See LoadTexture
func UploadImage(dev gpu.Device, img image.Image, loadOptions *TextureLoadOptions) Texture {

	if loadOptions == nil {
		loadOptions = &TextureLoadOptions{}
	}

	nrgbaImg := prism.ConvertImageToNRGBA(img, runtime.NumCPU())
	if !loadOptions.KeepOrientation {
		flipVertically(nrgbaImg)
	}

	bounds := nrgbaImg.Bounds()
	tex := Texture{
		Width:  int32(bounds.Dx()),
		Height: int32(bounds.Dy()),
	}

	tex.Id = dev.GenTexture()
	if tex.Id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL texture")
	}

	dev.BindTexture(gl.TEXTURE_2D, tex.Id)

	minFilter := int32(gl.NEAREST)
	if loadOptions.LinearMinFilter {
		minFilter = gl.LINEAR
	}

	if !loadOptions.NoMipmaps {
		if minFilter == gl.LINEAR {
			minFilter = gl.LINEAR_MIPMAP_LINEAR
		} else {
			minFilter = gl.NEAREST_MIPMAP_LINEAR
		}
	}

	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	dev.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	var pixels unsafe.Pointer
	if len(nrgbaImg.Pix) > 0 {
		pixels = unsafe.Pointer(&nrgbaImg.Pix[0])
	}

	dev.TexImage2D(gl.TEXTURE_2D, gl.RGBA8, tex.Width, tex.Height, gl.RGBA, gl.UNSIGNED_BYTE, pixels)

	if !loadOptions.NoMipmaps {
		dev.GenerateMipmap(gl.TEXTURE_2D)
	}

	return tex
}

func flipVertically(img *image.NRGBA) {

	rowLen := img.Bounds().Dx() * 4
	rowCount := img.Bounds().Dy()
	tmp := make([]byte, rowLen)

	for top, bottom := 0, rowCount-1; top < bottom; top, bottom = top+1, bottom-1 {

		topRow := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		bottomRow := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]

		copy(tmp, topRow)
		copy(topRow, bottomRow)
		copy(bottomRow, tmp)
	}
}
