// Package dotenv loads .env files for binaries that blank-import it.
// Import for side effects:
//
//	_ "azquote-api/internal/bootstrap/dotenv"
package dotenv

import "azquote-api/pkg/confkit"

func init() {
	confkit.LoadDotenvOnce()
}
