package sidechannel

import (
	"github.com/jymfony/scriba/runtime/reflection"
)

const (
	idA reflection.ClassID = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	idB reflection.ClassID = "6ec0bd7f-11c0-43da-975e-2a8ad9ebae0b"
)

func sampleClass() *reflection.ClassData {
	return &reflection.ClassData{
		FQCN:      "App.Greeter",
		ClassName: "Greeter",
		Namespace: "App",
		Filename:  "/app/Greeter.js",
		Docblock:  "/** Greets. */",
		Members: []reflection.MemberData{
			{Kind: "field", Index: 0, Docblock: "/** @var string */"},
			{
				Kind:  "method",
				Index: 1,
				Params: []reflection.RawParameter{
					{Name: "name", Index: 0, HasDefault: true, Default: &reflection.LiteralDefault{Kind: reflection.LiteralString, Value: "world"}},
					{Name: "times", Index: 1, HasDefault: true, Default: &reflection.LiteralDefault{Kind: reflection.LiteralNumber, Value: 2}},
					{Name: "rest", Index: 2, IsRestElement: true},
				},
			},
		},
	}
}
