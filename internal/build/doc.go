// Package build runs the navigation build pipeline: load the outline, build
// the selected sidebar's tree and, optionally, check it against the docs
// directory. The CLI's one-shot and watch modes both route through Service.
package build
