// Package output puts generated chaff on disk and takes it away again.
//
// A Writer stores each encoded file under its planned name, adding a _N
// suffix rather than overwriting. A TimestampRandomizer backdates the files.
// Every run is recorded in a TOML Manifest holding each file's path,
// encoding method and BLAKE3 digest; Clean uses the digest to delete only
// files that have not been touched since they were written.
package output
