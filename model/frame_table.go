package model

// frameNames holds the canonical frame labels indexed by ordinal. Index 0 is
// the undefined sentinel and is never issued.
var frameNames = [...]string{
	"ORM_UNDEFINED",
	"ORM_ABSTRACT_2D",
	"ORM_ABSTRACT_3D",
	"ORM_ADINDAN_1991",
	"ORM_ADRASTEA_2000",
	"ORM_AFGOOYE_1987",
	"ORM_AIN_EL_ABD_1970",
	"ORM_AMALTHEA_2000",
	"ORM_AMERICAN_SAMOA_1962",
	"ORM_AMERSFOORT_1885_1903",
	"ORM_ANNA_1_1965",
	"ORM_ANTIGUA_1943",
	"ORM_ARC_1950",
	"ORM_ARC_1960",
	"ORM_ARIEL_1988",
	"ORM_ASCENSION_1958",
	"ORM_ATLAS_1988",
	"ORM_AUSTRALIAN_GEOD_1966",
	"ORM_AUSTRALIAN_GEOD_1984",
	"ORM_AYABELLE_LIGHTHOUSE_1991",
	"ORM_BEACON_E_1945",
	"ORM_BELGIUM_1972",
	"ORM_BELINDA_1988",
	"ORM_BELLEVUE_IGN_1987",
	"ORM_BERMUDA_1957",
	"ORM_BERN_1898",
	"ORM_BERN_1898_PM_BERN",
	"ORM_BIANCA_1988",
	"ORM_BISSAU_1991",
	"ORM_BOGOTA_OBS_1987",
	"ORM_BOGOTA_OBS_1987_PM_BOGOTA",
	"ORM_BUKIT_RIMPAH_1987",
	"ORM_CALLISTO_2000",
	"ORM_CALYPSO_1988",
	"ORM_CAMP_AREA_1987",
	"ORM_CAMPO_INCHAUSPE_1969",
	"ORM_CANTON_1966",
	"ORM_CAPE_1987",
	"ORM_CAPE_CANAVERAL_1991",
	"ORM_CARTHAGE_1987",
	"ORM_CHARON_1991",
	"ORM_CHATHAM_1971",
	"ORM_CHUA_1987",
	"ORM_COAMPS_1998",
	"ORM_CORDELIA_1988",
	"ORM_CORREGO_ALEGRE_1987",
	"ORM_CRESSIDA_1988",
	"ORM_CYPRUS_1935",
	"ORM_DABOLA_1991",
	"ORM_DECEPTION_1993",
	"ORM_DEIMOS_1988",
	"ORM_DESDEMONA_1988",
	"ORM_DESPINA_1991",
	"ORM_DIONE_1982",
	"ORM_DJAKARTA_1987",
	"ORM_DJAKARTA_1987_PM_DJAKARTA",
	"ORM_DOS_1968",
	"ORM_DOS_71_4_1987",
	"ORM_EARTH_INERTIAL_ARIES_1950",
	"ORM_EARTH_INERTIAL_ARIES_TRUE_OF_DATE",
	"ORM_EARTH_INERTIAL_J2000r0",
	"ORM_EARTH_SOLAR_ECLIPTIC",
	"ORM_EARTH_SOLAR_EQUATORIAL",
	"ORM_EARTH_SOLAR_MAG_DIPOLE",
	"ORM_EARTH_SOLAR_MAGNETOSPHERIC",
	"ORM_EASTER_1967",
	"ORM_ENCELADUS_1994",
	"ORM_EPIMETHEUS_1988",
	"ORM_EROS_2000",
	"ORM_ESTONIA_1937",
	"ORM_ETRS_1989",
	"ORM_EUROPA_2000",
	"ORM_EUROPE_1950",
	"ORM_EUROPE_1979",
	"ORM_FAHUD_1987",
	"ORM_FORT_THOMAS_1955",
	"ORM_GALATEA_1991",
	"ORM_GAN_1970",
	"ORM_GANYMEDE_2000",
	"ORM_GANYMEDE_MAGNETIC_2000",
	"ORM_GASPRA_1991",
	"ORM_GDA_1994",
	"ORM_GEODETIC_DATUM_1949",
	"ORM_GEOMAGNETIC_1945",
	"ORM_GEOMAGNETIC_1950",
	"ORM_GEOMAGNETIC_1955",
	"ORM_GEOMAGNETIC_1960",
	"ORM_GEOMAGNETIC_1965",
	"ORM_GEOMAGNETIC_1970",
	"ORM_GEOMAGNETIC_1975",
	"ORM_GEOMAGNETIC_1980",
	"ORM_GEOMAGNETIC_1985",
	"ORM_GEOMAGNETIC_1990",
	"ORM_GEOMAGNETIC_1995",
	"ORM_GEOMAGNETIC_2000",
	"ORM_GGRS_1987",
	"ORM_GRACIOSA_BASE_SW_1948",
	"ORM_GUAM_1963",
	"ORM_GUNONG_SEGARA_1987",
	"ORM_GUX_1_1987",
	"ORM_HARTEBEESTHOCK_1994",
	"ORM_HELENE_1992",
	"ORM_HELIO_ARIES_ECLIPTIC_J2000r0",
	"ORM_HELIO_ARIES_ECLIPTIC_TRUE_OF_DATE",
	"ORM_HELIO_EARTH_ECLIPTIC",
	"ORM_HELIO_EARTH_EQUATORIAL",
	"ORM_HERAT_NORTH_1987",
	"ORM_HERMANNSKOGEL_1871",
	"ORM_HJORSEY_1955",
	"ORM_HONG_KONG_1963",
	"ORM_HONG_KONG_1980",
	"ORM_HU_TZU_SHAN_1991",
	"ORM_HUNGARIAN_1972",
	"ORM_IAPETUS_1988",
	"ORM_IDA_1991",
	"ORM_INDIAN_1916",
	"ORM_INDIAN_1954",
	"ORM_INDIAN_1956",
	"ORM_INDIAN_1960",
	"ORM_INDIAN_1962",
	"ORM_INDIAN_1975",
	"ORM_INDONESIAN_1974",
	"ORM_IO_2000",
	"ORM_IRAQ_KUWAIT_BNDRY_1992",
	"ORM_IRELAND_1965",
	"ORM_ISTS_061_1968",
	"ORM_ISTS_073_1969",
	"ORM_JANUS_1988",
	"ORM_JGD_2000",
	"ORM_JOHNSTON_1961",
	"ORM_JULIET_1988",
	"ORM_JUPITER_1988",
	"ORM_JUPITER_INERTIAL",
	"ORM_JUPITER_MAGNETIC_1992",
	"ORM_JUPITER_SOLAR_ECLIPTIC",
	"ORM_JUPITER_SOLAR_EQUATORIAL",
	"ORM_JUPITER_SOLAR_MAG_DIPOLE",
	"ORM_JUPITER_SOLAR_MAG_ECLIPTIC",
	"ORM_KANDAWALA_1987",
	"ORM_KERGUELEN_1949",
	"ORM_KERTAU_1948",
	"ORM_KOREAN_GEODETIC_1995",
	"ORM_KUSAIE_1951",
	"ORM_LANDESVERMESSUNG_1995",
	"ORM_LARISSA_1991",
	"ORM_LC5_1961",
	"ORM_LEIGON_1991",
	"ORM_LIBERIA_1964",
	"ORM_LISBON_D73",
	"ORM_LKS_1994",
	"ORM_LUZON_1987",
	"ORM_M_PORALOKO_1991",
	"ORM_MAHE_1971",
	"ORM_MARCUS_STATION_1952",
	"ORM_MARS_2000",
	"ORM_MARS_INERTIAL",
	"ORM_MARS_SPHERE_2000",
	"ORM_MASS_1999",
	"ORM_MASSAWA_1987",
	"ORM_MERCHICH_1987",
	"ORM_MERCURY_1988",
	"ORM_MERCURY_INERTIAL",
	"ORM_METIS_2000",
	"ORM_MIDWAY_1961",
	"ORM_MIMAS_1994",
	"ORM_MINNA_1991",
	"ORM_MIRANDA_1988",
	"ORM_MM5_1997",
	"ORM_MODTRAN_MIDLATITUDE_N_1989",
	"ORM_MODTRAN_MIDLATITUDE_S_1989",
	"ORM_MODTRAN_SUBARCTIC_N_1989",
	"ORM_MODTRAN_SUBARCTIC_S_1989",
	"ORM_MODTRAN_TROPICAL_1989",
	"ORM_MONTSERRAT_1958",
	"ORM_MOON_1991",
	"ORM_MULTIGEN_FLAT_EARTH_1989",
	"ORM_N_AM_1927",
	"ORM_N_AM_1983",
	"ORM_N_SAHARA_1959",
	"ORM_NAHRWAN_1987",
	"ORM_NAIAD_1991",
	"ORM_NAPARIMA_1991",
	"ORM_NEPTUNE_1991",
	"ORM_NEPTUNE_INERTIAL",
	"ORM_NEPTUNE_MAGNETIC_1993",
	"ORM_NOGAPS_1988",
	"ORM_NTF_1896",
	"ORM_NTF_1896_PM_PARIS",
	"ORM_OBERON_1988",
	"ORM_OBSERV_METEORO_1939",
	"ORM_OLD_EGYPTIAN_1907",
	"ORM_OLD_HAW_CLARKE_1987",
	"ORM_OLD_HAW_INT_1987",
	"ORM_OPHELIA_1988",
	"ORM_OSGB_1936",
	"ORM_PALESTINE_1928",
	"ORM_PAN_1991",
	"ORM_PANDORA_1988",
	"ORM_PHOBOS_1988",
	"ORM_PHOEBE_1988",
	"ORM_PICO_DE_LAS_NIEVES_1987",
	"ORM_PITCAIRN_1967",
	"ORM_PLUTO_1994",
	"ORM_PLUTO_INERTIAL",
	"ORM_POINT_58_1991",
	"ORM_POINTE_NOIRE_1948",
	"ORM_PORTIA_1988",
	"ORM_PORTO_SANTO_1936",
	"ORM_PROMETHEUS_1988",
	"ORM_PROTEUS_1991",
	"ORM_PROV_S_AM_1956",
	"ORM_PROV_S_CHILEAN_1963",
	"ORM_PUCK_1988",
	"ORM_PUERTO_RICO_1987",
	"ORM_PULKOVO_1942",
	"ORM_QATAR_NATIONAL_1974",
	"ORM_QATAR_NATIONAL_1995",
	"ORM_QORNOQ_1987",
	"ORM_REUNION_1947",
	"ORM_RGF_1993",
	"ORM_RHEA_1988",
	"ORM_ROME_1940",
	"ORM_ROME_1940_PM_ROME",
	"ORM_ROSALIND_1988",
	"ORM_RT_1990",
	"ORM_RT_1990_PM_STOCKHOLM",
	"ORM_S_AM_1969",
	"ORM_S_ASIA_1987",
	"ORM_S_JTSK_1993",
	"ORM_S42_PULKOVO",
	"ORM_SANTO_DOS_1965",
	"ORM_SAO_BRAZ_1987",
	"ORM_SAPPER_HILL_1943",
	"ORM_SATURN_1988",
	"ORM_SATURN_INERTIAL",
	"ORM_SATURN_MAGNETIC_1993",
	"ORM_SCHWARZECK_1991",
	"ORM_SELVAGEM_GRANDE_1938",
	"ORM_SIERRA_LEONE_1960",
	"ORM_SIRGAS_2000",
	"ORM_SOUTHEAST_1943",
	"ORM_SOVIET_GEODETIC_1985",
	"ORM_SOVIET_GEODETIC_1990",
	"ORM_SUN_1992",
	"ORM_TAN_OBS_1925",
	"ORM_TAN_OBS_1925_PM_PARIS",
	"ORM_TELESTO_1988",
	"ORM_TERN_1961",
	"ORM_TETHYS_1991",
	"ORM_THALASSA_1991",
	"ORM_THEBE_2000",
	"ORM_TIM_BESSEL_1948",
	"ORM_TIM_BESSEL_ADJ_1968",
	"ORM_TIM_EV_1948",
	"ORM_TIM_EV_ADJ_1968",
	"ORM_TITAN_1982",
	"ORM_TITANIA_1988",
	"ORM_TOKYO_1991",
	"ORM_TRISTAN_1968",
	"ORM_TRITON_1991",
	"ORM_UMBRIEL_1988",
	"ORM_URANUS_1988",
	"ORM_URANUS_INERTIAL",
	"ORM_URANUS_MAGNETIC_1993",
	"ORM_VENUS_1991",
	"ORM_VENUS_INERTIAL",
	"ORM_VITI_LEVU_1916",
	"ORM_VOIROL_1874",
	"ORM_VOIROL_1874_PM_PARIS",
	"ORM_VOIROL_1960",
	"ORM_VOIROL_1960_PM_PARIS",
	"ORM_WAKE_1952",
	"ORM_WAKE_ENIWETOK_1960",
	"ORM_WGS_1972",
	"ORM_WGS_1984",
	"ORM_YACARE_1987",
	"ORM_ZANDERIJ_1987",
}
