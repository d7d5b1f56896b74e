package main

import "errors"

var errInvalidScenario = errors.New("bucketbench: invalid scenario")
