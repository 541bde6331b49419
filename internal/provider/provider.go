package provider

import (
	"context"

	"github.com/ankek/terraform-provider-archdiagram/internal/icons"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure ArchdiagramProvider satisfies various provider interfaces.
var _ provider.Provider = &ArchdiagramProvider{}

// ArchdiagramProvider defines the provider implementation.
type ArchdiagramProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

// ArchdiagramProviderModel describes the provider data model.
type ArchdiagramProviderModel struct {
	IconCacheDir types.String `tfsdk:"icon_cache_dir"`
	FontDirs     types.List   `tfsdk:"font_dirs"`
}

func (p *ArchdiagramProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "archdiagram"
	resp.Version = p.version
}

func (p *ArchdiagramProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "The archdiagram provider renders cloud architecture diagrams from declarative scene files.",
		Attributes: map[string]schema.Attribute{
			"icon_cache_dir": schema.StringAttribute{
				Description: "Directory holding index.json and the prepared icons. Defaults to ARCHDIAGRAM_ICON_DIR, then the user cache directory. Run `archdiagram icons` to fill it.",
				Optional:    true,
			},
			"font_dirs": schema.ListAttribute{
				Description: "Directories searched for DejaVu or Liberation TrueType fonts. Built-in fonts are used when none are found.",
				ElementType: types.StringType,
				Optional:    true,
			},
		},
	}
}

func (p *ArchdiagramProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data ArchdiagramProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	cacheDir := data.IconCacheDir.ValueString()
	if cacheDir == "" {
		cacheDir = icons.DefaultCacheDir()
	}

	var fontDirs []string
	if !data.FontDirs.IsNull() && !data.FontDirs.IsUnknown() {
		resp.Diagnostics.Append(data.FontDirs.ElementsAs(ctx, &fontDirs, false)...)
		if resp.Diagnostics.HasError() {
			return
		}
	}

	resolver, err := icons.LoadResolver(cacheDir)
	if err != nil {
		// A broken index only costs icons; every service still renders as a glyph.
		tflog.Warn(ctx, "icon index unreadable, using fallback glyphs", map[string]interface{}{
			"icon_cache_dir": cacheDir,
			"error":          err.Error(),
		})
		resp.Diagnostics.AddWarning("Icon index unreadable", err.Error())
	}
	tflog.Debug(ctx, "configured archdiagram provider", map[string]interface{}{
		"icon_cache_dir": cacheDir,
		"icons":          resolver.Len(),
		"font_dirs":      fontDirs,
	})

	generator := NewSceneGenerator(resolver, fontDirs)
	resp.DataSourceData = generator
	resp.ResourceData = generator
}

func (p *ArchdiagramProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewSceneResource,
	}
}

func (p *ArchdiagramProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewSceneDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &ArchdiagramProvider{
			version: version,
		}
	}
}
