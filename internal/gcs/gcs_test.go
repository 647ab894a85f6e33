package gcs

import "testing"

func TestParseURI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{
			name:       "simple object",
			uri:        "gs://billing-exports/2026/08/billing_data.csv",
			wantBucket: "billing-exports",
			wantObject: "2026/08/billing_data.csv",
		},
		{
			name:       "top level object",
			uri:        "gs://bucket/file.csv",
			wantBucket: "bucket",
			wantObject: "file.csv",
		},
		{
			name:    "missing scheme",
			uri:     "bucket/file.csv",
			wantErr: true,
		},
		{
			name:    "bucket only",
			uri:     "gs://bucket",
			wantErr: true,
		},
		{
			name:    "empty object",
			uri:     "gs://bucket/",
			wantErr: true,
		},
		{
			name:    "empty string",
			uri:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, object, err := ParseURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("ParseURI(%q) = %q, %q; want %q, %q",
					tt.uri, bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
