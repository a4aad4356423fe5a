/*
Nmmsd starts an NMMS reasoner daemon and begins listening for HTTP
requests.

Usage:

	nmmsd [flags]

If a JWT token secret is not given, one is generated at startup and
seeded from crypto/rand; as with tqserver, this means tokens issued in
that mode become invalid as soon as the daemon restarts, which is fine
for local testing but not production use.

The flags are:

	-v, --version
		Give the current version of the reasoner and then exit.

	-c, --config FILE
		Load daemon settings (listen address, base file, max depth, RQ
		mode) from the given TOML file. If not given, built-in defaults
		are used.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If not given, a
		random secret is generated at startup.

	--admin-password PASSWORD
		Set the bootstrap admin account's password. If not given, a
		random password is generated and printed once at startup.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dekarrin/nmms"
	"github.com/dekarrin/nmms/internal/materialbase"
	"github.com/dekarrin/nmms/internal/persist"
	"github.com/dekarrin/nmms/internal/proofsearch"
	"github.com/dekarrin/nmms/internal/sentence"
	"github.com/dekarrin/nmms/internal/version"
	"github.com/dekarrin/nmms/server"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of the reasoner and then exit.")
	flagConfig    = pflag.StringP("config", "c", "", "Load daemon settings from the given TOML file.")
	flagSecret    = pflag.StringP("secret", "s", "", "Use the given secret for JWT signing.")
	flagAdminPass = pflag.String("admin-password", "", "Set the bootstrap admin account's password.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg := persist.DefaultConfig()
	if *flagConfig != "" {
		loaded, err := persist.LoadConfig(*flagConfig)
		if err != nil {
			log.Fatalf("FATAL could not load config: %s", err.Error())
		}
		cfg = loaded
	}

	mode := sentence.Propositional
	if cfg.RQMode {
		mode = sentence.RQ
	}

	var mb *materialbase.MaterialBase
	if cfg.BaseFile != "" {
		if data, err := os.ReadFile(cfg.BaseFile); err == nil {
			parsed, err := persist.FromJSON(data, mode)
			if err != nil {
				log.Fatalf("FATAL could not load base file: %s", err.Error())
			}
			mb = parsed
		} else {
			mb = materialbase.New()
		}
	} else {
		mb = materialbase.New()
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = proofsearch.DefaultMaxDepth
	}
	reasoner := nmms.FromBase(mb, proofsearch.MaxDepth(maxDepth))

	tokSecret := []byte(*flagSecret)
	if len(tokSecret) == 0 {
		tokSecret = make([]byte, 64)
		if _, err := rand.Read(tokSecret); err != nil {
			log.Fatalf("FATAL could not generate token secret: %s", err.Error())
		}
		log.Printf("WARN  using generated token secret; all tokens issued will become invalid at shutdown")
	}
	for len(tokSecret) < server.MinSecretSize {
		tokSecret = append(tokSecret, tokSecret...)
	}
	if len(tokSecret) > server.MaxSecretSize {
		tokSecret = tokSecret[:server.MaxSecretSize]
	}

	adminPass := *flagAdminPass
	if adminPass == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			log.Fatalf("FATAL could not generate admin password: %s", err.Error())
		}
		adminPass = id.String()
		log.Printf("INFO  generated bootstrap admin password: %s", adminPass)
	}
	passHash, err := server.HashPassword(adminPass)
	if err != nil {
		log.Fatalf("FATAL could not hash admin password: %s", err.Error())
	}

	srvCfg := server.Config{
		TokenSecret:       tokSecret,
		AdminUser:         "admin",
		AdminPasswordHash: passHash,
	}

	srv, err := server.New(reasoner, mode, srvCfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}

	log.Printf("INFO  starting nmmsd on %s...", cfg.ListenAddress)
	if err := http.ListenAndServe(cfg.ListenAddress, srv.Router()); err != nil {
		log.Fatalf("FATAL %s", err.Error())
	}
}
