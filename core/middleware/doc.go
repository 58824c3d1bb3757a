// Package middleware groups the Fiber middleware of the API.
//
//   - auth: rejects requests without the configured X-API-Key.
//   - rayid: assigns every request an id, stored in the context locals under
//     logger.RayIDKey and echoed in the X-Ray-ID response header.
//
// rayid is registered before auth so rejected requests are traceable too.
package middleware
