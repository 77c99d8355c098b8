package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/intcode/debugs"
	"github.com/reusee/intcode/intcode"
	"github.com/reusee/intcode/networks"
	"github.com/reusee/intcode/scripts"
)

type Module struct {
	dscope.Module
	Intcode  intcode.Module
	Networks networks.Module
	Scripts  scripts.Module
	Debugs   debugs.Module
}
