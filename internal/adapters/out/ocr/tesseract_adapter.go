package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

// TesseractAdapter - внешний OCR-движок через бинарник tesseract
// Режим сегментации 6 (единый блок текста) лучше подходит для таблиц,
// чем режим по умолчанию
type TesseractAdapter struct {
	bin       string
	psm       string
	languages string
	logger    out.LoggerPort
}

func NewTesseractAdapter(cfg *config.Config, logger out.LoggerPort) *TesseractAdapter {
	return &TesseractAdapter{
		bin:       cfg.Ocr.TesseractBin,
		psm:       cfg.Ocr.Psm,
		languages: cfg.Ocr.Languages,
		logger:    logger,
	}
}

func (a *TesseractAdapter) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	preprocessed, err := preprocess(imageBytes)
	if err != nil {
		a.logger.Error("ocr.preprocess.failed", out.LogFields{
			"error": err.Error(),
		})
		return "", fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	cmd := exec.CommandContext(ctx, a.bin,
		"stdin", "stdout",
		"--psm", a.psm,
		"-l", a.languages,
	)
	cmd.Stdin = bytes.NewReader(preprocessed)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			// Бинарник не найден в PATH
			a.logger.Error("ocr.engine.unavailable", out.LogFields{
				"bin":   a.bin,
				"error": err.Error(),
			})
			return "", fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
		}

		a.logger.Error("ocr.extract.failed", out.LogFields{
			"error":  err.Error(),
			"stderr": stderr.String(),
		})
		return "", fmt.Errorf("failed to extract text from image: %v", err)
	}

	a.logger.Debug("ocr.extract.success", out.LogFields{
		"textLength": stdout.Len(),
	})

	return stdout.String(), nil
}

// preprocess переводит изображение в оттенки серого для лучшего
// распознавания и перекодирует его в PNG
func preprocess(imageBytes []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, src.At(x, y))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
