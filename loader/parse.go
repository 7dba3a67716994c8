package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/datascout/core"
)

// yamlColumn mirrors the column shape of the upstream metadata files.
type yamlColumn struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Datatype    string `yaml:"datatype"`
	Required    bool   `yaml:"required"`
}

// yamlTable mirrors the document shape of the upstream metadata files.
// Both the correct "columns" spelling and the "colums" typo occur in the
// wild; records carry the union of the two.
type yamlTable struct {
	SealID           int64        `yaml:"seal_id"`
	DatasetID        string       `yaml:"dataset_id"`
	TableLoc         string       `yaml:"table_loc"`
	TableTitle       string       `yaml:"table_title"`
	TableDescription string       `yaml:"table_description"`
	Keywords         []string     `yaml:"keywords"`
	Columns          []yamlColumn `yaml:"columns"`
	Colums           []yamlColumn `yaml:"colums"`
}

// parseTableFile parses a single YAML metadata file into a TableRecord.
func (l *Loader) parseTableFile(path string, sourceType core.SourceType) (*core.TableRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc yamlTable
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	columns := make([]core.Column, 0, len(doc.Columns)+len(doc.Colums))
	for _, col := range append(doc.Columns, doc.Colums...) {
		datatype := col.Datatype
		if datatype == "" {
			datatype = "Unknown"
		}
		columns = append(columns, core.Column{
			Name:        col.Name,
			Title:       col.Title,
			Description: col.Description,
			Datatype:    datatype,
			Required:    col.Required,
		})
	}

	record := &core.TableRecord{
		SealID:      doc.SealID,
		DatasetID:   doc.DatasetID,
		Location:    doc.TableLoc,
		Title:       doc.TableTitle,
		Description: doc.TableDescription,
		Keywords:    doc.Keywords,
		Columns:     columns,
		SourceFile:  filepath.Base(path),
		SourceType:  sourceType,
	}
	if err := core.ValidateTableRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Field labels of the structured description text format.
const (
	tableNameLabel        = "Table Name:"
	purposeLabel          = "Purpose:"
	keyFeaturesLabel      = "Key Features:"
	joinableFeaturesLabel = "Joinable Features:"
)

// parseDescriptionFile parses a structured TXT description file.
//
// The format is line-oriented:
//
//	Table Name: orders
//	Purpose: Tracks customer orders
//	Key Features: order lifecycle, payment status
//	Joinable Features: customer_id, product_id
//
// Unlabeled lines and unknown labels are ignored.
func (l *Loader) parseDescriptionFile(path string, sourceType core.SourceType) (*core.DescriptionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	record := &core.DescriptionRecord{
		SourceFile: filepath.Base(path),
		SourceType: sourceType,
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, tableNameLabel):
			record.TableName = strings.TrimSpace(strings.TrimPrefix(line, tableNameLabel))
		case strings.HasPrefix(line, purposeLabel):
			record.Purpose = strings.TrimSpace(strings.TrimPrefix(line, purposeLabel))
		case strings.HasPrefix(line, keyFeaturesLabel):
			record.KeyFeatures = splitFeatures(strings.TrimPrefix(line, keyFeaturesLabel))
		case strings.HasPrefix(line, joinableFeaturesLabel):
			record.JoinableFeatures = splitFeatures(strings.TrimPrefix(line, joinableFeaturesLabel))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := core.ValidateDescriptionRecord(record); err != nil {
		return nil, err
	}
	return record, nil
}

// splitFeatures splits a comma-separated feature list, dropping empties.
func splitFeatures(list string) []string {
	var features []string
	for _, feature := range strings.Split(list, ",") {
		if feature = strings.TrimSpace(feature); feature != "" {
			features = append(features, feature)
		}
	}
	return features
}
