// Package postgres provides PostgreSQL implementations of the store
// interfaces. It opens the connection pool, applies the embedded goose
// migrations, builds parameterized statements with the query package, and maps
// rows and driver errors into domain values.
package postgres
