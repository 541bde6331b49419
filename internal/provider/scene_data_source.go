package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ datasource.DataSource = &SceneDataSource{}
var _ datasource.DataSourceWithConfigure = &SceneDataSource{}

// SceneDataSource renders a scene file on every read.
type SceneDataSource struct {
	generator *SceneGenerator
}

func NewSceneDataSource() datasource.DataSource {
	return &SceneDataSource{}
}

// SceneDataSourceModel describes the data source data model.
type SceneDataSourceModel struct {
	ID            types.String `tfsdk:"id"`
	ScenePath     types.String `tfsdk:"scene_path"`
	OutputPath    types.String `tfsdk:"output_path"`
	Format        types.String `tfsdk:"format"`
	Variables     types.Map    `tfsdk:"variables"`
	ShowGrid      types.Bool   `tfsdk:"show_grid"`
	ServiceCount  types.Int64  `tfsdk:"service_count"`
	ContentSHA256 types.String `tfsdk:"content_sha256"`
}

func (d *SceneDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_scene"
}

func (d *SceneDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders an architecture scene file and reports what was drawn.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Data source identifier",
			},
			"scene_path": schema.StringAttribute{
				MarkdownDescription: "Path to the scene file (`.hcl`, `.scene` or HCL-JSON `.json`).",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"output_path": schema.StringAttribute{
				MarkdownDescription: "Path where the image will be saved.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"format": schema.StringAttribute{
				MarkdownDescription: "Output format: 'png', 'jpeg', 'jpg' or 'svg'. Taken from the output extension when omitted.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf("png", "jpeg", "jpg", "svg"),
				},
			},
			"variables": schema.MapAttribute{
				MarkdownDescription: "Values available as `var.<name>` inside the scene file.",
				ElementType:         types.StringType,
				Optional:            true,
			},
			"show_grid": schema.BoolAttribute{
				MarkdownDescription: "Draw a labelled 100px grid under the diagram. Default is false.",
				Optional:            true,
			},
			"service_count": schema.Int64Attribute{
				MarkdownDescription: "Number of services in the scene.",
				Computed:            true,
			},
			"content_sha256": schema.StringAttribute{
				MarkdownDescription: "SHA-256 of the written image.",
				Computed:            true,
			},
		},
	}
}

func (d *SceneDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	generator, ok := req.ProviderData.(*SceneGenerator)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *provider.SceneGenerator, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}
	d.generator = generator
}

func (d *SceneDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data SceneDataSourceModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	cfg, diags := sceneConfig(ctx, data.ScenePath, data.OutputPath, data.Format, data.Variables, data.ShowGrid)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	result, err := generatorOrDefault(d.generator).Generate(ctx, cfg)
	if err != nil {
		resp.Diagnostics.AddError("Failed to render scene", err.Error())
		return
	}

	data.ServiceCount = types.Int64Value(result.ServiceCount)
	data.ContentSHA256 = types.StringValue(result.ContentSHA256)
	data.ID = types.StringValue(outputID(result.OutputPath))

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
