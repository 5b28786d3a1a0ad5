package cmdutil

import (
	"flag"
	"testing"
)

func TestStringSliceFlag(t *testing.T) {
	test := StringSlice("test", "test")
	flag.CommandLine.Parse([]string{
		"-test", "arn:aws:iam::111111111111:role/Foo",
		"-test", "arn:aws:iam::111111111111:role/Bar",
	})
	t.Log(test)
	if test.Len() != 2 {
		t.Fatal(test.Slice())
	}
	if s := test.Slice(); s[0] != "arn:aws:iam::111111111111:role/Foo" || s[1] != "arn:aws:iam::111111111111:role/Bar" {
		t.Fatal(s)
	}
}
