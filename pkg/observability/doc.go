/*
Package observability provides tools for monitoring the arbor decision core.

It includes Prometheus metrics fed by lifecycle hooks, a structured logging
hook set, and Combine to fan several hook sets out of a single machine.
*/
package observability
