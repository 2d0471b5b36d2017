// Package domain contains the core types shared across handlers, services,
// and repositories. Tables in the backing schema are dynamically discovered,
// so rows carry no compile-time shape; they travel as column-keyed maps.
package domain
