// Package requests provides a fluent, immutable builder for HTTP requests
// and a wrapper for inspecting and deserializing responses.
//
// Every builder call returns a new value, so a half-configured builder can
// be stored and forked freely:
//
//	api := requests.New(requests.NewClient(), serializer.New(),
//	    requests.WithOptions(requests.Options{BaseURI: "https://api.example.com"}),
//	).Header("Accept", "application/json")
//
//	resp, err := api.
//	    Get("/users/{id}").
//	    Var("id", "42").
//	    Bearer(token).
//	    Response(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err = resp.CheckStatus(http.StatusOK)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	user, err := requests.Object[User](resp)
//
// The builder performs no I/O until Response is called, and the package
// never retries, logs, or recovers internally: transport and serialization
// failures surface to the caller unmodified. The only error type defined
// here is StatusCodeError, produced by CheckStatus.
//
// Thread Safety:
//
// Builders and responses are immutable after construction. Sharing the
// default Client across goroutines is safe; custom Transport implementations
// are responsible for their own concurrency.
package requests
