package main

import (
	"context"
	"flag"
	"log"

	"github.com/ankek/terraform-provider-archdiagram/internal/provider"
	"github.com/hashicorp/terraform-plugin-framework/providerserver"
)

// version is set by the release build.
var version string = "dev"

// registryAddress is the provider source address.
const registryAddress = "registry.terraform.io/ankek/archdiagram"

func main() {
	var debug bool

	flag.BoolVar(&debug, "debug", false, "set to true to run the provider with support for debuggers like delve")
	flag.Parse()

	opts := providerserver.ServeOpts{
		Address: registryAddress,
		Debug:   debug,
	}

	err := providerserver.Serve(context.Background(), provider.New(version), opts)
	if err != nil {
		log.Fatal(err.Error())
	}
}
