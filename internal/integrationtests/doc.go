// Package integrationtests runs whole configuration passes and cleans over
// layouts written to temporary directories.
package integrationtests
