/*
Package testcontainers runs the backend conformance tests and a library client round trip against real servers that
emulate popular storage services.  It uses the local Docker daemon to run them.
*/
package testcontainers
