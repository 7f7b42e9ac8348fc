// Package config provides configuration parsing for pageswap.
//
// The configuration is stored in pageswap.json (or pageswap.yaml) at the
// project root. It binds view slugs to named renderers and transitions and
// configures the page sources and the inspection server.
//
// # Configuration File Structure
//
//	{
//	  "renderers": {
//	    "article": "content"
//	  },
//	  "transitions": {
//	    "default": "fade",
//	    "gallery": "slide"
//	  },
//	  "server": {
//	    "host": "localhost",
//	    "port": 4000
//	  },
//	  "metrics": {
//	    "namespace": "pageswap"
//	  },
//	  "source": {
//	    "timeout": "10s",
//	    "s3": {
//	      "bucket": "site-pages",
//	      "prefix": "public/",
//	      "region": "eu-west-1"
//	    }
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reg, err := cfg.Registry(resolve.NewCatalog())
package config
