// Package router turns deep-link URLs into routes and dispatches them to the
// root of a coordinator tree.
//
// Unlike a process-wide singleton, a Router is created once at bootstrap and
// passed explicitly to whatever receives URL events (the platform entry point,
// an HTTP server, a CLI).
//
// # Basic Usage
//
//	r := router.New().
//	    RegisterURLSchemes("myapp").
//	    RegisterUniversalLinkDomains("shop.example.com")
//
//	r.SetRoot(appCoordinator)
//
//	if r.CanHandleURL(raw) {
//	    handled, err := r.HandleURL(raw)
//	    ...
//	}
//
// # URL Grammar
//
//	myapp://                        home
//	myapp://products                product list
//	myapp://products/{id}           product detail
//	myapp://products/{id}/reviews   product detail, then its reviews
//	myapp://profile/{userId}        user profile
//	myapp://cart                    cart
//	myapp://settings                settings
//
// Universal links use the same paths under a registered domain, e.g.
// https://shop.example.com/products/42. Any other path parses to a route of
// kind none, which is never dispatched.
//
// # Query Parameters
//
// Query parameters are attached to the first route of the chain. When a key
// appears more than once the last value wins.
package router
