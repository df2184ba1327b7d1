// Package internal implements the tinyweb application: routing, dispatch,
// the filter pipeline and result rendering.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/tinyweb" instead, which re-exports the public API.
//
// # Request flow
//
// chi matches the route pattern and the global middleware runs. The route's
// pipeline then:
//
//  1. creates every filter through the Factory, global filters first;
//  2. runs each Before hook in order, stopping at the first Result;
//  3. creates the handler and invokes the method named after the verb;
//  4. runs each After hook in the same order, the first Result replacing the
//     handler's;
//  5. renders the Result, or hands the error to the ErrorHandler.
//
// Method parameters are bound by package binder. Handlers read route values,
// the query string and the form body in that order; filters skip route values.
//
// # Dispatch tables
//
// The methods of a handler or filter type are inspected once and cached for
// the lifetime of the process. New builds the tables of every registered type
// so configuration defects surface at startup.
package internal
