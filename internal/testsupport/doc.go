// Package testsupport provides shared helpers for tests: temp-dir seeded
// configurations and fixture listing/detail page markup.
package testsupport
