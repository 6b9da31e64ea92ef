/*
Package cors implements a framework-neutral CORS policy decision engine.

Construct an engine once, at startup, from an [Options] value using [New]
or [Must]:

	engine := cors.Must(cors.Options{
		Origin:      cors.ListOrigin(cors.ExactEntry("https://app.example.com")),
		Methods:     cors.ListMethods("GET", "POST"),
		Credentials: true,
	})

Then, per request, translate the incoming request into a
[RequestContext] and call [Cors.Check]:

	decision := engine.Check(cors.RequestContext{
		Method:    r.Method,
		Origin:    r.Header.Get("Origin"),
		HasOrigin: r.Header.Get("Origin") != "",
		// ...
	})
	for _, h := range decision.Headers {
		w.Header().Set(h.Name, h.Value)
	}

Check never touches net/http or any other transport; callers own the
translation in both directions, which keeps the engine usable from
net/http middleware, gRPC interceptors, or any other server framework.

A *Cors is immutable after construction and safe for concurrent use by
any number of goroutines.
*/
package cors
