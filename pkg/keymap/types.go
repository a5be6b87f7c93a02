package keymap

import "encoding/xml"

type xmlKeymap struct {
	XMLName xml.Name   `xml:"keymap"`
	Name    string     `xml:"name,attr"`
	Layers  []xmlLayer `xml:"layer"`
}

type xmlLayer struct {
	Name string   `xml:"name,attr"`
	Rows []string `xml:"row"`
}
