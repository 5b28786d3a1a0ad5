package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/src-bin/plancheck/awssts"
	"github.com/src-bin/plancheck/cmdutil"
	"github.com/src-bin/plancheck/fileutil"
	"github.com/src-bin/plancheck/jsonutil"
	"github.com/src-bin/plancheck/policies"
	"github.com/src-bin/plancheck/providers"
	"github.com/src-bin/plancheck/roles"
	"github.com/src-bin/plancheck/tfconfig"
	"github.com/src-bin/plancheck/tfplan"
	"github.com/src-bin/plancheck/ui"
	"github.com/src-bin/plancheck/version"
)

func main() {
	planFile := flag.String("plan", "", "pathname of a plan snapshot JSON file to audit")
	configDir := flag.String("config", "", "pathname of a directory of Terraform configuration to audit in place of -plan")
	policyFile := flag.String("policy", "", "pathname of a YAML or JSON policy file listing allowed role ARNs")
	snapshotFile := flag.String("snapshot", "", "pathname to write the loaded snapshot as JSON, suitable for later -plan runs")
	allow := cmdutil.StringSlice("allow", "role ARN to allow in addition to those in -policy (may be repeated)")
	providerType := flag.String("provider", "aws", "provider type whose assumed roles are audited")
	whoami := flag.Bool("whoami", false, "print the AWS caller identity running this check before auditing")
	quiet := flag.Bool("quiet", false, "suppress status and diagnostic output")
	flag.Parse()
	version.Flag()
	if *quiet {
		ui.Quiet()
	}
	if (*planFile == "") == (*configDir == "") {
		ui.Fatal(`exactly one of -plan="..." or -config="..." is required`)
	}
	if *planFile != "" && !fileutil.NotEmpty(*planFile) {
		ui.Fatalf("%s doesn't exist or is empty", *planFile)
	}
	if *configDir != "" && !fileutil.IsDir(*configDir) {
		ui.Fatalf("%s isn't a directory", *configDir)
	}
	if *policyFile == "" && allow.Len() == 0 {
		ui.Fatal(`-policy="..." or at least one -allow="..." is required`)
	}
	if *policyFile != "" && !fileutil.Exists(*policyFile) {
		ui.Fatalf("%s doesn't exist", *policyFile)
	}

	if *whoami {
		ui.Spin("fetching the AWS caller identity")
		callerIdentity, err := awssts.GetCallerIdentity(context.Background())
		if ui.StopErr(err) != nil {
			ui.Fatal(err)
		}
		ui.PrettyPrintJSON(os.Stderr, callerIdentity)
	}

	allowList := policies.AllowList(allow.Slice())
	if *policyFile != "" {
		allowList = append(ui.Must2(policies.LoadAllowList(*policyFile)), allowList...)
	}

	var (
		snapshot *tfplan.Snapshot
		err      error
	)
	if *planFile != "" {
		ui.Spinf("reading plan snapshot %s", *planFile)
		snapshot, err = tfplan.Load(*planFile)
	} else {
		ui.Spinf("loading Terraform configuration from %s", *configDir)
		snapshot, err = tfconfig.LoadDir(*configDir)
	}
	if err != nil {
		ui.Fatal(err)
	}
	ui.Stop("ok")
	if *snapshotFile != "" {
		ui.Must(jsonutil.Write(snapshot, *snapshotFile))
	}

	ui.Spinf("resolving the assumed role of every %s provider alias", *providerType)
	located, err := providers.Locate(snapshot, *providerType)
	if err != nil {
		ui.Fatal(err)
	}
	resolver := &roles.Resolver{Variables: snapshot}
	resolved := make(map[string]string, len(located))
	for address, pc := range located {
		resolved[address] = resolver.Resolve(pc)
	}
	ui.Stopf("%d found", len(resolved))

	ok, violations := policies.Validate(resolved, allowList)
	for _, v := range violations {
		fmt.Println(v) // standard output, -quiet or not, so nothing hides a violation
	}
	if !ok {
		os.Exit(1)
	}
	ui.Printf("all %d %s provider aliases assume allowed roles (or none at all)", len(resolved), *providerType)
}
