// Package encoding decides how each chaff file is obscured and applies it.
//
// # Methods
//
// Seven methods are supported:
//
//   - none: bytes are written as rendered
//   - base64, base64-multiline, base64-urlsafe: text encodings, the
//     multiline form wrapped at 64 columns like legacy mail attachments
//   - symmetric-encrypted: PBKDF2 + secretbox, see package secrets
//   - password-zip-single: one AES-256 entry named data.bin
//   - password-zip-multi: content split across document.dat and
//     metadata.txt plus a decoy checksum.md5 entry
//
// # Selection
//
// Selector maps a file kind to a method. PDFs, images and emails are always
// left as none so they remain openable in their native viewers. Other kinds
// draw from a configurable WeightTable with one weight per method.
//
// # Inversion
//
// Every Result carries enough metadata (the password, and the salt which is
// also embedded in the output) for Decode to recover the original bytes.
package encoding
