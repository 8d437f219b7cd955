package engine

import (
	"github.com/herohde/former/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
)

func toDriverOptions(opt Options) searchctl.Options {
	driver := searchctl.Options{
		BeamWidth:  opt.BeamWidth,
		MaxThreads: opt.MaxThreads,
	}
	if opt.MaxDepth != 0 {
		driver.MaxDepth = lang.Some(opt.MaxDepth)
	}
	return driver
}
