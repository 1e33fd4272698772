// tokengen mints an HS256 bearer token for calling the judge API. The user
// id is opaque to this service; pass whatever identity the surrounding
// platform assigned.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Raiyyanpatel/PrepVerse/internal/common/security"
	"github.com/Raiyyanpatel/PrepVerse/internal/platform/config"
)

func main() {
	userID := flag.String("user", "", "opaque user id to embed in the token")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -user <user-id>")
		os.Exit(2)
	}

	config.Load()

	token, err := security.GenerateToken(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
