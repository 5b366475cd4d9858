// Package qrhttp exposes the qrcode façade over HTTP using a chi router.
//
// # Endpoints
//
//	POST /encode         JSON {"text": "...", "options": {"as": "svg", ...}}
//	POST /decode         multipart "file" upload, or JSON {"width", "height", "data"}
//	GET  /decode/{path}  decode an image from a file.Source (local dir or S3)
//	GET  /health         liveness probe
//
// /encode answers with the rendered payload: image bytes for gif, SVG or text
// for svg/ascii, and a JSON matrix for raw. The X-QR-Output-Type header
// carries the declared payload kind.
//
// # Errors
//
// Failures are returned as {"error": {"kind", "message", "request_id"}} with
// the status derived from the error kind:
//
//	VALIDATION              400
//	CONVERTING              422
//	PROCESSING (no symbol)  422
//	PROCESSING (other)      500
//
// Upload problems map to 413 (too large) and 415 (not an image); unknown
// stored paths to 404.
//
// # Request ids
//
// RequestIDMiddleware accepts a well-formed X-Request-ID or generates a UUID.
// LogRequestID plugs the id into loggers built by the logger package.
//
// # Usage
//
//	h := qrhttp.NewHandler(qrcode.NewService(), qrhttp.WithLogger(log))
//	srv := qrhttp.NewServer(cfg, h.Routes(), log)
//	if err := srv.Run(ctx); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
package qrhttp
