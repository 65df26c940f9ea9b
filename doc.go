// Package backend provides the Hearthside API server.
//
// This package holds top-level documentation. The implementation is
// organized into subpackages:
//
//   - internal/handlers: HTTP request handlers for all API endpoints
//   - internal/models: Data models and database schemas
//   - internal/auth: Account service (registration, login, suspension)
//   - internal/posts: Post service (feed, likes, shares)
//   - internal/token: Session token issuing and verification
//   - internal/storage: Picture storage (S3 or local disk)
//   - internal/database: Database connection and migrations
//   - internal/middleware: HTTP middleware (auth, request logging, metrics)
//   - internal/metrics: Prometheus collectors
//   - internal/seed: Development and test data seeding
//
// See the individual package documentation for detailed API reference.
package backend
