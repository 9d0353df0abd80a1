// Package watch regenerates the requirements file whenever the manifest it
// was generated from changes. Events are debounced so that an editor's
// save sequence (write, rename, chmod) triggers a single regeneration.
package watch
