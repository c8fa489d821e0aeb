// Package rewrite applies caller-supplied text transforms to generated
// files in place.
//
// A Rule pairs a file, relative to the build output directory, with a pure
// TransformFunc that receives the file's full content and the output
// directory and returns the new full content. ProcessRewrite runs every
// rule concurrently and reports the first failure once all rules settled.
package rewrite
