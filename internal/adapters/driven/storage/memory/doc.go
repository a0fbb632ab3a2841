// Package memory provides in-memory implementations of the driven
// storage ports. They back the service tests and are not durable.
package memory
