// Package secrets provides the cryptographic primitives behind protected
// chaff files.
//
// # Passwords
//
// PasswordGenerator produces three tiers of password:
//
//   - Weak: a common real-world password such as "password123"
//   - Medium: a template such as Word+NN+"!", FirstName+year or City+NNN
//   - Strong: 16 characters drawn from crypto/rand
//
// Passwords are deliberately recorded in plaintext by callers so they can be
// planted elsewhere in the generated corpus.
//
// # Symmetric Encryption
//
// SealWithPassword derives a 32-byte key with PBKDF2-HMAC-SHA256 (100 000
// iterations, 16-byte random salt) and seals the data with NaCl secretbox
// under a random 24-byte nonce. The output layout is:
//
//	salt (16) | nonce (24) | secretbox ciphertext
//
// so the password alone is enough to recover the plaintext.
//
// # Archives
//
// WriteEncryptedArchive writes WinZip AES-256 encrypted, deflate compressed
// zip archives that open in standard archive tools given the password.
package secrets
