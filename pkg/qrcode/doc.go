// Package qrcode generates PNG QR codes and serves them as responses.
//
// Codes use medium error correction, which recovers from about 15% damage
// and suits both screens and print.
//
// # Usage
//
// Raw PNG bytes:
//
//	png, err := qrcode.Generate("https://example.com", 256)
//	if err != nil {
//		return err
//	}
//
// Data URI for HTML embedding:
//
//	src, err := qrcode.GenerateBase64Image("https://example.com", 256)
//
// As a handler response:
//
//	func qrHandler(c handler.Context) response.Response {
//		return response.WithCache(qrcode.Response(c.Request().URL.Query().Get("url"), 256), time.Hour)
//	}
//
// Empty content becomes a 400 response; a size of zero or less uses
// DefaultSize. 256px scans well on most phones, 512px or more suits print.
package qrcode
