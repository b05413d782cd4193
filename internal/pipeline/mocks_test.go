package pipeline

import (
	"context"

	"github.com/vvka-141/inetl/pkg/inetl"
)

type mockExtractor struct {
	extractFunc func(ctx context.Context, path string) (*inetl.Table, error)
	calls       int
}

func (m *mockExtractor) Extract(ctx context.Context, path string) (*inetl.Table, error) {
	m.calls++
	return m.extractFunc(ctx, path)
}

type mockTransformer struct {
	transformFunc func(table *inetl.Table) ([]inetl.Record, error)
	calls         int
}

func (m *mockTransformer) Transform(table *inetl.Table) ([]inetl.Record, error) {
	m.calls++
	return m.transformFunc(table)
}

type mockLoader struct {
	loadFunc func(ctx context.Context, config inetl.RunConfig, records []inetl.Record) (inetl.LoadResult, error)
	calls    int
}

func (m *mockLoader) Load(ctx context.Context, config inetl.RunConfig, records []inetl.Record) (inetl.LoadResult, error) {
	m.calls++
	if m.loadFunc != nil {
		return m.loadFunc(ctx, config, records)
	}
	return inetl.LoadResult{
		ArtifactPath:     config.OutputPath,
		ArtifactChecksum: "deadbeef",
		ArtifactRows:     len(records),
		TableName:        config.TableName,
		TableRows:        int64(len(records)),
	}, nil
}

func extractorOf(e inetl.Extractor) ExtractorFactory {
	return func(inetl.RunConfig) (inetl.Extractor, error) { return e, nil }
}

func transformerOf(t inetl.Transformer) TransformerFactory {
	return func(inetl.RunConfig) (inetl.Transformer, error) { return t, nil }
}

func twoRowTable() *inetl.Table {
	return &inetl.Table{
		Header: []string{"Location"},
		Rows:   [][]string{{"Afghanistan"}, {"Albania"}},
	}
}

func okExtractor() *mockExtractor {
	return &mockExtractor{extractFunc: func(context.Context, string) (*inetl.Table, error) {
		return twoRowTable(), nil
	}}
}

func okTransformer() *mockTransformer {
	return &mockTransformer{transformFunc: func(table *inetl.Table) ([]inetl.Record, error) {
		records := make([]inetl.Record, table.Len())
		for i, row := range table.Rows {
			records[i].Location = row[0]
		}
		return records, nil
	}}
}

func validConfig() inetl.RunConfig {
	return inetl.RunConfig{
		SourcePath: "internet_users.csv",
		OutputPath: "transformed_internet_users_data.csv",
		TableName:  "internet_users",
		Connection: inetl.ConnectionConfig{
			Driver:   inetl.DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			Database: "app_db",
		},
	}
}
