package output

import (
	"io"
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// writeXML serializes doc as an XML document:
//
//	<resources files="3">
//	  <bucket name="appIcons" count="1">
//	    <file path="appicon.png" name="appicon" extension="png" .../>
//	  </bucket>
//	  <scriptsReferencedByMarkup>
//	    <script path="lib/embedded.js"/>
//	  </scriptsReferencedByMarkup>
//	</resources>
func writeXML(w io.Writer, doc *Document, order []string) error {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("resources")
	root.CreateAttr("files", strconv.Itoa(doc.Summary.Files))

	for _, name := range order {
		files := doc.Buckets[name]
		bucket := root.CreateElement("bucket")
		bucket.CreateAttr("name", name)
		bucket.CreateAttr("count", strconv.Itoa(len(files)))

		paths := make([]string, 0, len(files))
		for p := range files {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			rec := files[p]
			file := bucket.CreateElement("file")
			file.CreateAttr("path", p)
			file.CreateAttr("name", rec.Name)
			setAttr(file, "extension", rec.Extension)
			file.CreateAttr("source", rec.SourcePath)
			setAttr(file, "dest", rec.DestPath)
			setAttr(file, "tag", rec.Tag)
			setAttr(file, "scale", rec.Scale)
			setAttr(file, "device", rec.Device)
		}
	}

	scripts := root.CreateElement("scriptsReferencedByMarkup")
	for _, p := range doc.ScriptsReferencedByMarkup {
		scripts.CreateElement("script").CreateAttr("path", p)
	}

	x.Indent(2)
	_, err := x.WriteTo(w)
	return err
}

func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}
