package provider

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/resource"
)

func TestProviderMetadata(t *testing.T) {
	p := New("test")()

	var resp provider.MetadataResponse
	p.Metadata(context.Background(), provider.MetadataRequest{}, &resp)
	if resp.TypeName != "archdiagram" {
		t.Errorf("TypeName = %q, want archdiagram", resp.TypeName)
	}
	if resp.Version != "test" {
		t.Errorf("Version = %q, want test", resp.Version)
	}

	if n := len(p.Resources(context.Background())); n != 1 {
		t.Errorf("got %d resources, want 1", n)
	}
	if n := len(p.DataSources(context.Background())); n != 1 {
		t.Errorf("got %d data sources, want 1", n)
	}
}

func TestSchemas(t *testing.T) {
	ctx := context.Background()

	var presp provider.SchemaResponse
	New("test")().Schema(ctx, provider.SchemaRequest{}, &presp)
	if presp.Diagnostics.HasError() {
		t.Fatalf("provider schema: %v", presp.Diagnostics)
	}
	if diags := presp.Schema.ValidateImplementation(ctx); diags.HasError() {
		t.Errorf("provider schema invalid: %v", diags)
	}

	var rresp resource.SchemaResponse
	NewSceneResource().Schema(ctx, resource.SchemaRequest{}, &rresp)
	if diags := rresp.Schema.ValidateImplementation(ctx); diags.HasError() {
		t.Errorf("resource schema invalid: %v", diags)
	}
	for _, attr := range []string{"scene_path", "output_path", "format", "variables", "show_grid", "content_sha256"} {
		if _, ok := rresp.Schema.Attributes[attr]; !ok {
			t.Errorf("resource schema missing %q", attr)
		}
	}

	var dresp datasource.SchemaResponse
	NewSceneDataSource().Schema(ctx, datasource.SchemaRequest{}, &dresp)
	if diags := dresp.Schema.ValidateImplementation(ctx); diags.HasError() {
		t.Errorf("data source schema invalid: %v", diags)
	}
	if _, ok := dresp.Schema.Attributes["service_count"]; !ok {
		t.Error("data source schema missing service_count")
	}
}

func TestResourceMetadata(t *testing.T) {
	var resp resource.MetadataResponse
	NewSceneResource().Metadata(context.Background(), resource.MetadataRequest{ProviderTypeName: "archdiagram"}, &resp)
	if resp.TypeName != "archdiagram_scene" {
		t.Errorf("TypeName = %q, want archdiagram_scene", resp.TypeName)
	}

	var dresp datasource.MetadataResponse
	NewSceneDataSource().Metadata(context.Background(), datasource.MetadataRequest{ProviderTypeName: "archdiagram"}, &dresp)
	if dresp.TypeName != "archdiagram_scene" {
		t.Errorf("TypeName = %q, want archdiagram_scene", dresp.TypeName)
	}
}

func TestConfigureRejectsWrongType(t *testing.T) {
	var resp resource.ConfigureResponse
	r := &SceneResource{}
	r.Configure(context.Background(), resource.ConfigureRequest{ProviderData: "not a generator"}, &resp)
	if !resp.Diagnostics.HasError() {
		t.Error("Configure() accepted provider data of the wrong type")
	}

	var ok resource.ConfigureResponse
	g := NewSceneGenerator(nil, nil)
	r.Configure(context.Background(), resource.ConfigureRequest{ProviderData: g}, &ok)
	if ok.Diagnostics.HasError() || r.generator != g {
		t.Error("Configure() did not keep the generator")
	}
}
