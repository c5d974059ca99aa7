// Package s3 streams objects from Amazon S3 and S3-compatible storage as
// HTTP response bodies.
//
// A Source looks objects up with HeadObject to learn their size and content
// type, then downloads them with GetObject only when the response body is
// written. The object body goes through BodyWriter.WriteFile and is closed on
// every exit path, so large objects are never held in memory.
//
// Basic usage:
//
//	import (
//		"context"
//
//		"github.com/dmitrymomot/httpout/core/config"
//		"github.com/dmitrymomot/httpout/core/handler"
//		"github.com/dmitrymomot/httpout/core/response"
//		"github.com/dmitrymomot/httpout/integration/storage/s3"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		var cfg s3.Config
//		config.MustLoad(&cfg)
//
//		src, err := s3.New(ctx, cfg)
//		if err != nil {
//			panic(err)
//		}
//
//		download := func(c handler.Context) response.Response {
//			return src.Response(c, c.Param("key"))
//		}
//		_ = download
//	}
//
// S3-compatible services (MinIO, DigitalOcean Spaces, Wasabi) need an
// endpoint and usually path-style addressing:
//
//	cfg := s3.Config{
//		Bucket:         "assets",
//		Region:         "us-east-1",
//		Endpoint:       "http://localhost:9000",
//		ForcePathStyle: true,
//	}
//
// Errors returned by Stat and Open are classified into package sentinels such
// as ErrObjectNotFound and ErrAccessDenied; use errors.Is to match them.
package s3
