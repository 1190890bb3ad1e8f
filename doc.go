// Package smallserver provides the request-to-file pipeline of a small static
// file server.
//
// A request is served in two steps. The Resolver maps a raw URL path onto a
// file under the served root, substituting the directory index and falling
// back to built-in index and 404 pages when nothing matches. The Builder then
// turns the ResolvedFile and the request headers into a ResponsePlan: the
// status code, the outgoing headers, the byte window to stream and the content
// encoding to apply.
//
// # Key Components
//
//   - Resolver: path decoding, traversal protection, index substitution and fallback pages
//   - Builder: conditional requests, caching headers, byte ranges and compression selection
//   - FileSystem: interface for stat and open operations (see the filesystem package)
//   - MIMETypes: extension to content-type lookup
//
// # Example Usage
//
//	files := filesystem.NewFileStorage()
//	pages := filesystem.NewFSStorage(public.FS)
//
//	resolver, err := smallserver.NewResolver(files, smallserver.ResolverConfig{
//	    Root:         "./site",
//	    Index:        "index.html",
//	    IndexPage:    smallserver.Page{FS: pages, Name: public.IndexPage},
//	    NotFoundPage: smallserver.Page{FS: pages, Name: public.NotFoundPage},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	builder := smallserver.NewBuilder(smallserver.BuilderConfig{})
//
//	file, err := resolver.Resolve(ctx, r.URL.EscapedPath())
//	plan := builder.Plan(r.Header, file)
//
// See the http package for the HTTP transport that streams a plan.
package smallserver
