// Package connectors provides the content fetchers feeding the ingest
// pipeline. Each connector knows how to turn one kind of origin
// (YouTube videos, web pages, news feeds, dropped markdown files) into
// domain.DocumentInput values.
package connectors
