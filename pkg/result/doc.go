// Package result defines the values handlers and filters return to describe
// a response.
//
// A handler method never writes to the response directly. It returns one of
// the variants below and the application renders it:
//
//	func (h *ProductHandler) Get(args struct{ ID int }) result.Result {
//	    if args.ID == 0 {
//	        return result.Redirect("/")
//	    }
//	    return result.HTML("product.html")
//	}
//
// Filters return a Result only to end the request early; a nil Result lets
// the pipeline continue.
package result
