package out

import "context"

// OcrPort - внешний движок распознавания текста
// Возвращает domain.ErrOCRUnavailable, если движок недоступен,
// и domain.ErrImageDecode, если изображение не читается
type OcrPort interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}
