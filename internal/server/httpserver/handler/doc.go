// Package handler provides HTTP request handlers for kvdb.
//
// Handlers decode JSON request bodies, call the storage engine, and encode
// flat JSON responses. An absent key is reported through exists=false or
// success=false rather than the error field; the error field carries engine
// failures and request bodies that cannot be decoded.
package handler
