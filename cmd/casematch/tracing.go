package main

import (
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracingKeys lists the tracers of this module.
var tracingKeys = []string{
	"casematch.pattern",
	"casematch.subscript",
	"casematch.scenario",
	"casematch.value",
	"casematch.vector",
	"casematch.btree",
}

// setupTracing configures every tracer of this module to trace with level,
// using Go's standard logger.
func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := koanfadapter.New(nil, "", nil)
	conf.InitDefaults() // tracing.adapter = go
	conf.Set("tracelevel.root", level)
	for _, key := range tracingKeys {
		conf.Set("tracelevel."+key, level)
	}
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Select("casematch.scenario").Debugf("tracing configured with level %s", level)
	return nil
}
