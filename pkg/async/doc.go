// Package async provides a panic-safe helper for fire-and-forget background
// tasks such as notification emails that must never affect the request that
// triggered them.
package async
