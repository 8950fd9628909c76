/*
Package persistent holds the immutable containers backing subscriptable values.

Package vector is a persistent vector with structural sharing; package btree is a
persistent ordered map from string keys. Both are safe to share between goroutines,
as every update returns a new version and leaves the receiver untouched. Snapshots
handed out by subscript containers are just retained versions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package persistent
