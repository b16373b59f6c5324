// Package api exposes the HTTP surface: authentication, movie CRUD, image
// upload, and the email administration endpoints. Handlers translate between
// the JSON envelope and the domain services; all domain rules live in the
// service packages.
package api
