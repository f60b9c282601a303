// Package handlers implements the HTTP API for alphabetic listings.
//
//	GET    /v1/items                        public listing (published only)
//	GET    /admin/v1/items                  admin listing
//	GET    /v1/items/{id}                   one item
//	POST   /v1/items                        create or replace an item
//	DELETE /v1/items/{id}                   remove an item
//	GET    /v1/categories                   registered categories
//	GET    /v1/categories/{category}/links  A-Z navigation for a category
//
// Listing endpoints accept alpha_filter (or the legacy alpha) to select a
// letter or the "0-9" bucket; see package alpha.
package handlers
