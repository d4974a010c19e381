//go:build ignore

// Скрипт для генерации иконок трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"icon_idle.png", color.RGBA{128, 128, 128, 255}},  // Серый
		{"icon_active.png", color.RGBA{80, 140, 230, 255}}, // Синий
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", icon.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

// generateIcon рисует скруглённую карточку с тремя строками "текста".
func generateIcon(path string, c color.RGBA) error {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	const (
		left, top     = 10, 10
		right, bottom = 54, 54
		radius        = 8
	)

	inCard := func(x, y int) bool {
		if x < left || x >= right || y < top || y >= bottom {
			return false
		}
		// углы
		cx, cy := x, y
		switch {
		case x < left+radius:
			cx = left + radius
		case x >= right-radius:
			cx = right - radius - 1
		}
		switch {
		case y < top+radius:
			cy = top + radius
		case y >= bottom-radius:
			cy = bottom - radius - 1
		}
		dx, dy := x-cx, y-cy
		return dx*dx+dy*dy <= radius*radius
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if inCard(x, y) {
				img.Set(x, y, c)
			}
		}
	}

	// Строки
	white := color.RGBA{255, 255, 255, 255}
	for i, width := range []int{28, 20, 24} {
		y0 := 20 + i*10
		for y := y0; y < y0+4; y++ {
			for x := 18; x < 18+width; x++ {
				img.Set(x, y, white)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
