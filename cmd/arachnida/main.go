// Package main provides the entry point for the arachnida CLI.
//
// arachnida bundles two tools for working with images on the web:
//
//	arachnida spider <url>       download images from a site, optionally recursive
//	arachnida scorpion <files>   show image metadata (EXIF, dimensions, dates)
//
// See --help for all available options.
package main

// main is the entry point for arachnida.
func main() {
	Execute()
}
