package provider

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ resource.Resource = &SceneResource{}
var _ resource.ResourceWithConfigure = &SceneResource{}
var _ resource.ResourceWithImportState = &SceneResource{}

func NewSceneResource() resource.Resource {
	return &SceneResource{}
}

// SceneResource renders a scene file and owns the written image.
type SceneResource struct {
	generator *SceneGenerator
}

// SceneResourceModel describes the resource data model.
type SceneResourceModel struct {
	ID            types.String `tfsdk:"id"`
	ScenePath     types.String `tfsdk:"scene_path"`
	OutputPath    types.String `tfsdk:"output_path"`
	Format        types.String `tfsdk:"format"`
	Variables     types.Map    `tfsdk:"variables"`
	ShowGrid      types.Bool   `tfsdk:"show_grid"`
	ContentSHA256 types.String `tfsdk:"content_sha256"`
}

func (r *SceneResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_scene"
}

func (r *SceneResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders an architecture scene file to a PNG, JPEG or SVG image.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Resource identifier",
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"scene_path": schema.StringAttribute{
				MarkdownDescription: "Path to the scene file (`.hcl`, `.scene` or HCL-JSON `.json`).",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"output_path": schema.StringAttribute{
				MarkdownDescription: "Path where the image will be saved. The directory must exist.",
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
				MarkdownDescription: "Draw a labelled 100px grid under the diagram, useful while placing elements. Default is false.",
				Optional:            true,
			},
			"content_sha256": schema.StringAttribute{
				MarkdownDescription: "SHA-256 of the written image.",
				Computed:            true,
			},
		},
	}
}

func (r *SceneResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	generator, ok := req.ProviderData.(*SceneGenerator)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *provider.SceneGenerator, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}
	r.generator = generator
}

func (r *SceneResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var data SceneResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(r.render(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *SceneResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	var data SceneResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Check if output file still exists
	if _, err := os.Stat(data.OutputPath.ValueString()); os.IsNotExist(err) {
		tflog.Info(ctx, "rendered scene missing, removing from state", map[string]interface{}{
			"output_path": data.OutputPath.ValueString(),
		})
		resp.State.RemoveResource(ctx)
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *SceneResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var data SceneResourceModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(r.render(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *SceneResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var data SceneResourceModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// The resource owns the image it wrote.
	if err := os.Remove(data.OutputPath.ValueString()); err != nil && !errors.Is(err, os.ErrNotExist) {
		resp.Diagnostics.AddError("Failed to remove rendered scene", err.Error())
	}
}

func (r *SceneResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)
}

// render runs the generator for data and fills the computed attributes.
func (r *SceneResource) render(ctx context.Context, data *SceneResourceModel) diag.Diagnostics {
	var diags diag.Diagnostics

	cfg, d := sceneConfig(ctx, data.ScenePath, data.OutputPath, data.Format, data.Variables, data.ShowGrid)
	diags.Append(d...)
	if diags.HasError() {
		return diags
	}

	result, err := generatorOrDefault(r.generator).Generate(ctx, cfg)
	if err != nil {
		diags.AddError("Failed to render scene", err.Error())
		return diags
	}

	data.ID = types.StringValue(outputID(result.OutputPath))
	data.ContentSHA256 = types.StringValue(result.ContentSHA256)
	return diags
}

// sceneConfig converts framework values into a SceneConfig.
func sceneConfig(ctx context.Context, scenePath, outputPath, format types.String, vars types.Map, showGrid types.Bool) (SceneConfig, diag.Diagnostics) {
	var diags diag.Diagnostics
	cfg := SceneConfig{
		ScenePath:  scenePath.ValueString(),
		OutputPath: outputPath.ValueString(),
		Format:     format.ValueString(),
		ShowGrid:   showGrid.ValueBool(),
	}
	if !vars.IsNull() && !vars.IsUnknown() {
		diags.Append(vars.ElementsAs(ctx, &cfg.Variables, false)...)
	}
	return cfg, diags
}

// generatorOrDefault covers resources used before the provider was configured.
func generatorOrDefault(g *SceneGenerator) *SceneGenerator {
	if g != nil {
		return g
	}
	return NewSceneGenerator(nil, nil)
}
