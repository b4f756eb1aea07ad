// Package metadata inspects local image files: basic file attributes, image
// format and dimensions, and EXIF entries. It also strips EXIF-carrying
// segments out of JPEG files.
//
// Inspection is per-file and never fatal: a file that cannot be read or is not
// a supported image yields a FileReport with its Error field set, and the
// caller decides what that means for the process exit code.
package metadata
