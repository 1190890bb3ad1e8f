// Package http provides the HTTP transport for smallserver.
//
// A single catch-all route answers GET and HEAD. Each request is resolved to
// a file by a Service, planned by a Planner, and the planned window of the
// file is streamed, gzip or deflate encoded when the plan asks for it.
//
// # Features
//
//   - If-Modified-Since revalidation (304)
//   - Single byte ranges (206, 416)
//   - gzip and deflate response compression
//   - Built-in index and 404 pages
//   - Request ids, access logging and optional Prometheus metrics
//   - Configurable CORS support
//
// # Usage
//
//	resolver, _ := smallserver.NewResolver(files, resolverCfg)
//	builder := smallserver.NewBuilder(smallserver.BuilderConfig{})
//
//	handler := http.NewHandler(&http.HandlerConfig{ServerName: "smallserver/1.0"}, resolver, builder)
//	http.ListenAndServe(":3000", handler.Router())
//
// # Errors
//
// Storage failures before the status line is written become a 500 response
// whose body is the error text. Failures while streaming the body abort the
// response; the client sees a truncated transfer.
package http
